// Command piper is a reference CLI around the piper engine.
package main

func main() {
	Execute()
}
