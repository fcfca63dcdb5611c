package e2etest

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// FindForm returns the form posting to action.
func FindForm(doc *goquery.Document, action string) (*goquery.Selection, error) {
	if doc == nil {
		return nil, fmt.Errorf("no document to find form %s in", action)
	}
	form := doc.Find(fmt.Sprintf("form[action='%s']", action))
	if form.Length() == 0 {
		return nil, fmt.Errorf("form not found: %s", action)
	}
	return form, nil
}

// FindFieldForLabel returns the input, textarea or select labelled with labelText inside form.
//
// The label either names the control with its for attribute or wraps it.
func FindFieldForLabel(form *goquery.Selection, labelText string) (*goquery.Selection, error) {
	label := form.Find(fmt.Sprintf("label:contains('%s')", labelText)).First()
	if label.Length() == 0 {
		return nil, fmt.Errorf("label not found: %s", labelText)
	}

	field := label.Find("input, textarea, select")
	if id, ok := label.Attr("for"); ok {
		field = form.Find(fmt.Sprintf("input#%[1]s, textarea#%[1]s, select#%[1]s", id))
	}
	if field.Length() == 0 {
		return nil, fmt.Errorf("no field for label: %s", labelText)
	}
	return field.First(), nil
}
