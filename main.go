package main

import "github.com/ardiansn/employee-management/cmd"

func main() {
	cmd.Execute()
}
