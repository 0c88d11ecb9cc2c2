package usecase

import "gobarber/internal/feature/signup/domain/entity"

// Focuser moves input focus to a form field.
type Focuser interface {
	Focus(field string)
}

// FocusChain moves focus name -> email -> password when a field is submitted
// (return key). Submitting the last field asks the caller to submit the form.
// It lives outside the submission state machine.
type FocusChain struct {
	order   []string
	focuser Focuser
	current string
}

// NewFocusChain returns a chain over the form fields in display order.
func NewFocusChain(focuser Focuser) *FocusChain {
	order := entity.Fields()
	return &FocusChain{order: order, focuser: focuser, current: order[0]}
}

// Current returns the focused field.
func (c *FocusChain) Current() string { return c.current }

// Focus moves focus to field if it belongs to the chain.
func (c *FocusChain) Focus(field string) bool {
	for _, f := range c.order {
		if f == field {
			c.current = f
			c.focuser.Focus(f)
			return true
		}
	}
	return false
}

// FieldSubmitted handles the "field submitted" event for field.
// It reports whether the form should now be submitted.
func (c *FocusChain) FieldSubmitted(field string) (submit bool) {
	for i, f := range c.order {
		if f != field {
			continue
		}
		if i == len(c.order)-1 {
			return true
		}
		c.current = c.order[i+1]
		c.focuser.Focus(c.current)
		return false
	}
	return false
}
