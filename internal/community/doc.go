// Package community manages recipes published by users of this device.
//
// There is no server: the board is a local list persisted as one JSON value.
// A fresh install shows three example recipes. Recipes published here carry
// the device id as their author id, which is what the "mine" filter matches.
package community
