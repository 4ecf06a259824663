package cmd

import (
	"fmt"
	"runtime"

	"github.com/chukul/awsctx/internal"
)

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("awsctx version %s (%s/%s)\n", internal.CurrentVersion, runtime.GOOS, runtime.GOARCH))
}
