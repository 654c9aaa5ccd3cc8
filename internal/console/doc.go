// Package console implements the interactive command loop. Each input line
// is matched against a fixed set of commands; "import <file.txt> <strategy>"
// loads a parcel file and prints the text report, "exit" ends the session.
package console
