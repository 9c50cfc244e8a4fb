package codegen

import (
	"github.com/foolang-project/flc/internal/codegen/linux"
	"github.com/foolang-project/flc/internal/ir"
	"github.com/foolang-project/flc/pkg/elf"
)

// Compile dispatches a compilation unit to the backend for target. The
// only implemented target is "linux-amd64"; anything else is reported as
// NotImplemented, the same error kind used throughout this package for
// unsupported IR shapes rather than a distinct "bad target" category.
func Compile(target string, unit ir.CompilationUnit) (*elf.Object, error) {
	switch target {
	case "linux-amd64":
		obj, err := linux.Compile(unit)
		if err != nil {
			return nil, err
		}
		return obj, nil
	default:
		return nil, ErrNotImplemented("target %q", target)
	}
}
