// Command memctl exercises the memkit allocator from the command line.
package main

func main() {
	execute()
}
