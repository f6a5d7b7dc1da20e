// Package beans reads XML bean definitions and assembles them into a
// container. A definition names a bean, the registry class it is built from,
// and the properties injected into it by reference to other beans:
//
//	<beans>
//	  <bean id="dao" class="dao.Database"/>
//	  <bean id="metier" class="metier.Impl">
//	    <property name="dao" ref="dao"/>
//	  </bean>
//	</beans>
package beans

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

type Definitions struct {
	XMLName xml.Name `xml:"beans"`
	Beans   []Bean   `xml:"bean" validate:"required,min=1,dive"`
}

type Bean struct {
	ID         string     `xml:"id,attr" validate:"required"`
	Class      string     `xml:"class,attr" validate:"required"`
	Properties []Property `xml:"property" validate:"dive"`
}

// Property injects the bean named Ref through the setter called Name.
type Property struct {
	Name string `xml:"name,attr" validate:"required"`
	Ref  string `xml:"ref,attr" validate:"required"`
}

// DuplicateBeanError is returned when two beans share an id.
type DuplicateBeanError struct{ ID string }

func (e *DuplicateBeanError) Error() string {
	return "beans: duplicate bean id " + strconv.Quote(e.ID)
}

// UnknownRefError is returned when a property references an undefined bean.
type UnknownRefError struct {
	Bean     string
	Property string
	Ref      string
}

func (e *UnknownRefError) Error() string {
	return "beans: bean " + strconv.Quote(e.Bean) + " property " + strconv.Quote(e.Property) +
		" references unknown bean " + strconv.Quote(e.Ref)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads definitions from an XML file.
func Load(path string) (*Definitions, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("beans: %w", err)
	}
	defer f.Close()

	defs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return defs, nil
}

// Parse decodes and validates definitions.
func Parse(r io.Reader) (*Definitions, error) {
	var defs Definitions
	if err := xml.NewDecoder(r).Decode(&defs); err != nil {
		return nil, fmt.Errorf("beans: decode: %w", err)
	}
	if err := defs.Validate(); err != nil {
		return nil, err
	}
	return &defs, nil
}

// Validate checks required attributes, id uniqueness and references.
func (d *Definitions) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("beans: invalid definitions: %w", err)
	}

	ids := make(map[string]struct{}, len(d.Beans))
	for _, bean := range d.Beans {
		if _, ok := ids[bean.ID]; ok {
			return &DuplicateBeanError{ID: bean.ID}
		}
		ids[bean.ID] = struct{}{}
	}

	for _, bean := range d.Beans {
		for _, prop := range bean.Properties {
			if _, ok := ids[prop.Ref]; !ok {
				return &UnknownRefError{Bean: bean.ID, Property: prop.Name, Ref: prop.Ref}
			}
		}
	}
	return nil
}

// Lookup returns the definition with the given id.
func (d *Definitions) Lookup(id string) (Bean, bool) {
	for _, bean := range d.Beans {
		if bean.ID == id {
			return bean, true
		}
	}
	return Bean{}, false
}
