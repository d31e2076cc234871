package openmfd

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/3D-Printing-for-Microfluidics/openmfd-go/compiler"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/component"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/imgstore"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/manifold"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/settings"
)

// Option configures a Compile call.
type Option func(*compileOptions)

type compileOptions struct {
	designFile string
	date       string
	minimized  bool
}

func defaultCompileOptions() compileOptions {
	return compileOptions{
		designFile: "design.py",
		minimized:  true,
	}
}

// WithDesignFile records the source design file's name in the print
// program's "Design file" header field.
func WithDesignFile(name string) Option {
	return func(o *compileOptions) { o.designFile = name }
}

// WithDate overrides the print program's "Date" header field (format
// "YYYY-MM-DD HH:MM:SS"); Compile uses the current time if this is not
// supplied.
func WithDate(date string) Option {
	return func(o *compileOptions) { o.date = date }
}

// WithMinimizedImages controls the image directory name the print
// program's header records: "minimized_slices" (the default) or
// "slices". It changes only that name; layers are minimized and images
// deduplicated either way.
func WithMinimizedImages(v bool) Option {
	return func(o *compileOptions) { o.minimized = v }
}

// Result is the output of Compile: the print-program JSON plus the set
// of distinct PNG images it references.
type Result struct {
	ProgramJSON []byte
	Images      map[string][]byte
}

// Compile slices dev's device tree, derives every layer's exposure
// geometry, and assembles spec.md §6's print-program JSON, using lib as
// the manifold CSG collaborator and cfg for printer/resin identity and
// default layer settings.
func Compile(dev *component.Component, lib manifold.Library, cfg *settings.Settings, opts ...Option) (*Result, error) {
	o := defaultCompileOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.date == "" {
		o.date = time.Now().Format("2006-01-02 15:04:05")
	}

	store := imgstore.New()
	compiled, err := compiler.CompileDevice(dev, lib, store)
	if err != nil {
		return nil, fmt.Errorf("openmfd: compile %q: %w", dev.Name(), err)
	}

	program := compiler.BuildPrintProgram(compiled, cfg, o.designFile, o.date, o.minimized)
	out, err := json.MarshalIndent(program, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openmfd: marshal print program: %w", err)
	}

	return &Result{ProgramJSON: out, Images: store.Files()}, nil
}

// WriteZip writes r's print program and every referenced image into a
// single zip archive, with the images under "minimized_slices" when
// minimized is true and "slices" otherwise, matching spec.md §4.7 step
// 9's optional zip output.
func (r *Result) WriteZip(w io.Writer, minimized bool) error {
	imageDir := "slices"
	if minimized {
		imageDir = "minimized_slices"
	}

	zw := zip.NewWriter(w)
	defer zw.Close()

	programFile, err := zw.Create("print_program.json")
	if err != nil {
		return err
	}
	if _, err := programFile.Write(r.ProgramJSON); err != nil {
		return err
	}

	for name, data := range r.Images {
		f, err := zw.Create(imageDir + "/" + name)
		if err != nil {
			return err
		}
		if _, err := f.Write(data); err != nil {
			return err
		}
	}
	return nil
}
