package main

import (
	"fmt"
	"net/http"

	"github.com/sanctionwatch/screening-endpoint/testutils"
)

func main() {
	port := 8095
	http.HandleFunc("/", testutils.ListSourceHandler)
	fmt.Printf("mock list source listening on localhost:%d\n", port)
	http.ListenAndServe(fmt.Sprintf("localhost:%d", port), nil)
}
