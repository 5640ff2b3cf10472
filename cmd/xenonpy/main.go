// Copyright © 2019 Shunsuke Tonogai

package main

import "github.com/tonogaishunsuke/xenonpy/cmd/xenonpy/cmd"

func main() {
	cmd.Execute()
}
