package main

import "github.com/KaramelBytes/discountlens/cmd"

func main() {
	cmd.Execute()
}
