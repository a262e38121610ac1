package widget

// Dropdown is an open/closed menu.
type Dropdown struct {
	open bool
}

func (d *Dropdown) Toggle()      { d.open = !d.open }
func (d *Dropdown) Close()       { d.open = false }
func (d *Dropdown) IsOpen() bool { return d.open }
