package iologger

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnweather/pkg/errcode"
)

// CreateLogFileError is returned when the log file cannot be opened.
func CreateLogFileError(path string, err error) error {
	msg := "Cannot create log file <em>%s</em>"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  msg,
		Vars: []any{path},
		Err: fmt.Errorf("from %s: cannot create log file: %w",
			fn.Name(), err),
	}
}
