package layout

// SplitVertically reports whether a "new pane" command on a pane of the given
// size should stack the new pane below (true) rather than beside it. Wide,
// short panes split side by side; everything else splits top to bottom.
func SplitVertically(cols, rows int) bool {
	return cols < 4*rows && (rows > 40 || cols < 90)
}
