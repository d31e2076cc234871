package component

import (
	"path/filepath"
	"runtime"
)

// callerFile returns the source file of whoever called the public
// constructor that calls callerFile directly, the idiomatic-Go stand-in
// for the original's stack-walking _InstantiationTrackerMixin.
func callerFile() string {
	_, file, _, ok := runtime.Caller(2)
	if !ok {
		return ""
	}
	return file
}

// instantiationDir returns the directory the component's type was first
// registered from.
func (c *Component) instantiationDir() string {
	return filepath.Dir(c.location)
}

// instantiationStem returns the file-name stem (no extension) the
// component's type was first registered from.
func (c *Component) instantiationStem() string {
	base := filepath.Base(c.location)
	return base[:len(base)-len(filepath.Ext(base))]
}

// InstantiationDir exports instantiationDir for packages that need to
// locate a component's cache directory (e.g. router's route cache), per
// spec.md's "{instantiation_dir}/{source_file_stem}_cache/{component_name}"
// route-cache path convention.
func (c *Component) InstantiationDir() string { return c.instantiationDir() }

// InstantiationStem exports instantiationStem for the same reason.
func (c *Component) InstantiationStem() string { return c.instantiationStem() }
