// One-off: go run scripts/genhash.go [password] [cost]
package main

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	password := "admin"
	cost := 10
	if len(os.Args) > 1 {
		password = os.Args[1]
	}
	if len(os.Args) > 2 {
		if n, err := strconv.Atoi(os.Args[2]); err == nil {
			cost = n
		}
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		panic(err)
	}
	fmt.Print(string(h))
}
