// Package report renders loading results for people: a plain text report
// for the console, an Excel workbook, a PDF with one page per machine and
// PNG images of each machine.
package report
