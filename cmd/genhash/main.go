package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"jobboard.backend/pkg/crypto"
)

var (
	printfFn                 = fmt.Printf
	generateHashFn           = crypto.HashPassword
	fatalfFn                 = log.Fatalf
	stdin          io.Reader = os.Stdin
)

// resolvePassword takes the first argument or, when absent, the first line of in
func resolvePassword(args []string, in io.Reader) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("usage: genhash <password> (or pipe it on stdin)")
	}
	return password, nil
}

func main() {
	password, err := resolvePassword(os.Args[1:], stdin)
	if err != nil {
		fatalfFn("%v", err)
		return
	}

	hash, err := generateHashFn(password)
	if err != nil {
		fatalfFn("Failed to hash password: %v", err)
		return
	}

	printfFn("%s\n", hash)
}
