/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"github.com/gnames/gnweather/pkg/config"
	"github.com/spf13/cobra"
)

// flagFunc converts an explicitly set flag into config options.
type flagFunc func(cmd *cobra.Command) []config.Option

// flagOptions collects options of all changed flags.
func flagOptions(cmd *cobra.Command, fns ...flagFunc) []config.Option {
	var res []config.Option
	for _, fn := range fns {
		res = append(res, fn(cmd)...)
	}
	return res
}

func dataDirFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("data-dir") {
		return nil
	}
	s, _ := cmd.Flags().GetString("data-dir")
	return []config.Option{config.OptIngestDataDir(s)}
}

func progressFlag(cmd *cobra.Command) []config.Option {
	noProgress, _ := cmd.Flags().GetBool("no-progress")
	return []config.Option{config.OptIngestShowProgress(!noProgress)}
}

func portFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("port") {
		return nil
	}
	i, _ := cmd.Flags().GetInt("port")
	return []config.Option{config.OptServerPort(i)}
}
