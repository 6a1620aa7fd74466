// Package recipe defines the normalized recipe record and the rules that turn
// loosely typed endpoint rows into it.
//
// Normalization trims names, lowercases categories, cuisines and tags, splits
// the comma separated tag column, picks "image url" over "image", substitutes
// "#" for a missing link and resolves relative image and link paths against
// the site base URL.
package recipe
