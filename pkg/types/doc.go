// Package types defines the Store and Table interfaces, the Story, Scene,
// Token, and Asset entity types, and the standard error values shared by
// every layer of D-DMaker.
package types
