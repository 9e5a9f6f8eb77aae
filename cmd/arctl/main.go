// Command arctl inspects, verifies and extends asset registry files.
package main

func main() {
	execute()
}
