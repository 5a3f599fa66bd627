package dictionary

import (
	"github.com/neuronlabs/viewimport/qname"
)

// EffectiveAssociations gets the names of the associations of the anonymous type
// composed of the type 'typeName', its parents, their default aspects and
// the additional 'aspects'.
func EffectiveAssociations(svc Service, typeName qname.QName, aspects []qname.QName) map[qname.QName]struct{} {
	result := map[qname.QName]struct{}{}
	walkEffective(svc, typeName, aspects, func(c *ClassDefinition) {
		for name := range c.Associations {
			result[name] = struct{}{}
		}
	})
	return result
}

// EffectiveProperties gets the property definitions of the anonymous type composed
// of the type 'typeName', its parents, their default aspects and the additional 'aspects'.
func EffectiveProperties(svc Service, typeName qname.QName, aspects []qname.QName) map[qname.QName]*PropertyDefinition {
	result := map[qname.QName]*PropertyDefinition{}
	walkEffective(svc, typeName, aspects, func(c *ClassDefinition) {
		for name, prop := range c.Properties {
			if _, ok := result[name]; !ok {
				result[name] = prop
			}
		}
	})
	return result
}

// EffectiveAspects gets the default aspects of the type 'typeName' and its parents
// together with the 'aspects' and their own default aspects.
func EffectiveAspects(svc Service, typeName qname.QName, aspects []qname.QName) map[qname.QName]struct{} {
	result := map[qname.QName]struct{}{}
	walkEffective(svc, typeName, aspects, func(c *ClassDefinition) {
		if svc.Aspect(c.Name) != nil {
			result[c.Name] = struct{}{}
		}
	})
	return result
}

// IsSubClass checks if the class 'name' is the 'of' class or any of its descendants.
func IsSubClass(svc Service, name, of qname.QName) bool {
	for _, ancestor := range Ancestors(svc, name) {
		if ancestor == of {
			return true
		}
	}
	return false
}

// Ancestors gets the class 'name' followed by its parent classes, the closest first.
// The walk stops at the undefined class or at the class already visited.
func Ancestors(svc Service, name qname.QName) []qname.QName {
	var ancestors []qname.QName
	visited := map[qname.QName]struct{}{}
	for current := name; !current.IsZero(); {
		if _, ok := visited[current]; ok {
			break
		}
		visited[current] = struct{}{}
		ancestors = append(ancestors, current)

		c := classDefinition(svc, current)
		if c == nil {
			break
		}
		current = c.Parent
	}
	return ancestors
}

func walkEffective(svc Service, typeName qname.QName, aspects []qname.QName, fn func(c *ClassDefinition)) {
	visited := map[qname.QName]struct{}{}
	var visit func(name qname.QName)
	visit = func(name qname.QName) {
		if name.IsZero() {
			return
		}
		if _, ok := visited[name]; ok {
			return
		}
		visited[name] = struct{}{}

		c := classDefinition(svc, name)
		if c == nil {
			return
		}
		fn(c)
		visit(c.Parent)
		for _, aspect := range c.DefaultAspects {
			visit(aspect)
		}
	}

	visit(typeName)
	for _, aspect := range aspects {
		visit(aspect)
	}
}

func classDefinition(svc Service, name qname.QName) *ClassDefinition {
	if t := svc.Type(name); t != nil {
		return &t.ClassDefinition
	}
	if a := svc.Aspect(name); a != nil {
		return &a.ClassDefinition
	}
	return nil
}
