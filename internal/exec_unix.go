//go:build !windows

package internal

import "syscall"

func replaceProcess(argv0 string, argv []string, env []string) error {
	return syscall.Exec(argv0, argv, env)
}
