package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnweather/pkg/errcode"
)

// CreateDirError is returned when a gnweather directory cannot be created.
func CreateDirError(dir string, err error) error {
	msg := "Cannot create directory <em>%s</em>"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: []any{dir},
		Err: fmt.Errorf("from %s: cannot create directory: %w",
			fn.Name(), err),
	}
}

// CopyFileError is returned when the configuration template cannot
// be written.
func CopyFileError(file string, err error) error {
	msg := "Cannot write configuration file <em>%s</em>"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CopyFileError,
		Msg:  msg,
		Vars: []any{file},
		Err: fmt.Errorf("from %s: cannot copy file: %w",
			fn.Name(), err),
	}
}

// ReadFileError is returned when the configuration file cannot be read
// or parsed.
func ReadFileError(file string, err error) error {
	msg := "Cannot read file <em>%s</em>"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: []any{file},
		Err: fmt.Errorf("from %s: cannot read file: %w",
			fn.Name(), err),
	}
}
