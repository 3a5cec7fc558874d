// Package registry provides the plugin-like feature loading system for the
// HTTP surface.
//
// Each feature implements the Feature interface, which defines its lifecycle
// hooks and route registration logic. The Manager holds the registry of
// available features and handles:
//   - Registration of features via Register()
//   - Initialization and loading of enabled features via LoadAll()
//
// This architecture promotes modularity, allowing features like 'batch' and
// 'history' to be developed and tested in isolation.
package registry
