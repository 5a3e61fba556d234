package main

import (
	"fmt"
	"os"

	"github.com/paginadofounder/backend/pkg"
)

// hashgen prints the password digest expected in the admin_users table.
func main() {
	if len(os.Args) != 2 {
		fmt.Println("usage: hashgen <password>")
		os.Exit(1)
	}

	fmt.Println(pkg.HashPassword(os.Args[1]))
}
