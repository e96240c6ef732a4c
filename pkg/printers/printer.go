package printers

// Printer prints data to its output.
type Printer interface {
	Print(data any) error
}
