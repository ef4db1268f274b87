// Command pagesim runs reference strings through a simulated demand-paged
// virtual memory.
package main

import "github.com/tebeka/atexit"

func main() {
	Execute()
	atexit.Exit(0)
}
