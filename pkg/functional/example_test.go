package functional_test

import (
	"fmt"
	"strings"

	"github.com/vnykmshr/goinvoke/pkg/functional"
)

func ExamplePipe() {
	slug := functional.Pipe(
		strings.TrimSpace,
		strings.ToLower,
		func(s string) string { return strings.ReplaceAll(s, " ", "-") },
	)
	fmt.Println(slug("  Rate Controlled Invocation "))
	// Output: rate-controlled-invocation
}

func ExampleCurry2() {
	greet := functional.Curry2(func(greeting, name string) string {
		return greeting + ", " + name
	})
	hello := greet("Hello")
	fmt.Println(hello("Ada"))
	fmt.Println(hello("Grace"))
	// Output:
	// Hello, Ada
	// Hello, Grace
}
