// Package backend describes the graphics backends a build can target and
// resolves which one is the default.
//
// The set of candidate backends is fixed at compile time. Each backend is
// enabled or disabled by build constraints, so the enabled set is a
// constant of the binary:
//
//	metal   enabled on darwin unless built with -tags nometal
//	vulkan  enabled unless built with -tags novulkan (never on android or js)
//	empty   enabled unless built with -tags noempty
//
// A build that disables every backend does not compile.
//
// # Backend Selection
//
// Backends are declared in priority order, highest first:
//
//	metal > vulkan > empty
//
// Default returns the highest-priority enabled backend:
//
//	d, err := backend.Default()
//	if err != nil {
//		return err
//	}
//	fmt.Println(d.Name) // "vulkan" on a linux build with default tags
//
// The selection logic is also available as pure functions over an
// arbitrary set, which is how tooling and tests explore configurations
// other than the compiled one:
//
//	set := backend.Declared()
//	for i := range set {
//		set[i].Enabled = set[i].Name == backend.NameVulkan
//	}
//	d, err := backend.ResolveDefault(set)
package backend
