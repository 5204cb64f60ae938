// Command cnlearn looks up Chinese text in a local CC-CEDICT based
// dictionary, and seeds and migrates that dictionary.
package main

func main() {
	Execute()
}
