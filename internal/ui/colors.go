package ui

// Color accessor functions return the ANSI escape code for the named role
// in the currently active theme. They are the only color API the CLI
// presenters use, so swapping themes (or disabling color entirely) never
// touches presentation code.

// ColorRed returns the error color code.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the success color code.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color code.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the primary accent color code.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta returns the info color code.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan returns the secondary color code.
func ColorCyan() string { return GetCurrentTheme().Secondary }

// ColorBold returns the bold attribute code.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline attribute code.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// ColorReset returns the reset code clearing all attributes.
func ColorReset() string { return GetCurrentTheme().Reset }
