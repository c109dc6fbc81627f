// Copyright (C) 2022 The Superkinodb Authors.
//
// This file is part of Superkinodb.
//
// Superkinodb is free software: you can redistribute it and/or modify it under
// the terms of the GNU Affero General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.
//
// Superkinodb is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU Affero General Public License
// for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with Superkinodb.  If not, see <https://www.gnu.org/licenses/>.

// Package mason builds Mason hypermedia documents. A document is a plain
// map with some reserved @-prefixed keys so callers are free to add their
// own payload fields next to @namespaces, @controls and @error.
//
// See https://github.com/JornWildt/Mason for the media type draft.
package mason

// MediaType is the content type used for all Mason response bodies.
const MediaType = "application/vnd.mason+json"

// Attrs holds optional control properties: method, encoding, title,
// schema and friends. Only certain properties are allowed by the Mason
// draft; no checking is done here.
type Attrs map[string]interface{}

// Builder is a Mason document under construction. It marshals with
// encoding/json as-is.
type Builder map[string]interface{}

func NewBuilder() Builder {
	return Builder{}
}

// AddNamespace adds a namespace element to the document. The URI should
// be an address where developers can find information about the link
// relations used below it. Adding the same prefix twice overwrites.
func (b Builder) AddNamespace(prefix, uri string) {
	ns, ok := b["@namespaces"].(map[string]interface{})
	if !ok {
		ns = make(map[string]interface{})
		b["@namespaces"] = ns
	}
	ns[prefix] = map[string]interface{}{"name": uri}
}

// AddControl adds a named control with the given target href. Extra
// properties come from attrs; href always wins over a stray attrs key.
func (b Builder) AddControl(name, href string, attrs Attrs) {
	controls, ok := b["@controls"].(map[string]interface{})
	if !ok {
		controls = make(map[string]interface{})
		b["@controls"] = controls
	}
	control := make(map[string]interface{}, len(attrs)+1)
	for k, v := range attrs {
		control[k] = v
	}
	control["href"] = href
	controls[name] = control
}

// AddError sets the error element. Only meaningful on the root of an
// error response and never combined with normal content. Mason allows
// multiple strings in @messages; one is enough here.
func (b Builder) AddError(title, details string) {
	b["@error"] = map[string]interface{}{
		"@message":  title,
		"@messages": []string{details},
	}
}
