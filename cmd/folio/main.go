// cmd/folio/main.go
package main

func main() {
	Execute()
}
