package once_test

import (
	"fmt"

	"github.com/vnykmshr/goinvoke/pkg/invoke/once"
)

func Example() {
	calls := 0
	connect := once.Func(func(dsn string) (string, error) {
		calls++
		return "connected to " + dsn, nil
	})

	for i := 0; i < 5; i++ {
		conn, _ := connect("postgres://primary")
		fmt.Println(conn)
	}
	fmt.Println("calls:", calls)

	// Output:
	// connected to postgres://primary
	// connected to postgres://primary
	// connected to postgres://primary
	// connected to postgres://primary
	// connected to postgres://primary
	// calls: 1
}
