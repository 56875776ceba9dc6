package toon

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ============================================================
// YAML Bridge
// ============================================================
//
// Built on the yaml.v3 node API rather than Unmarshal-to-map so that
// mapping order survives and scalar lexemes stay inspectable.

const yamlAliasLimit = 1000

// FromYAML converts a YAML document to a Value, preserving mapping key
// order. Integer and float scalars keep their source lexeme when it fits
// the decimal grammar; other spellings (hex, octal, inf) are reformatted.
func FromYAML(data []byte) (*Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("toon: YAML parse: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, &EmptyDocumentError{}
	}
	c := &yamlConverter{}
	return c.fromNode(doc.Content[0])
}

type yamlConverter struct {
	aliases int
}

func (c *yamlConverter) fromNode(n *yaml.Node) (*Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		c.aliases++
		if c.aliases > yamlAliasLimit {
			return nil, fmt.Errorf("toon: YAML alias expansion limit exceeded")
		}
		return c.fromNode(n.Alias)

	case yaml.ScalarNode:
		return c.fromScalar(n)

	case yaml.SequenceNode:
		arr := Array()
		for _, child := range n.Content {
			v, err := c.fromNode(child)
			if err != nil {
				return nil, err
			}
			arr.arrVal = append(arr.arrVal, v)
		}
		return arr, nil

	case yaml.MappingNode:
		obj := Object()
		seen := make(map[string]struct{})
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valNode := n.Content[i], n.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("toon: YAML mapping key on line %d is not a scalar", keyNode.Line)
			}
			if err := noteKey(seen, keyNode.Value, keyNode.Line); err != nil {
				return nil, err
			}
			v, err := c.fromNode(valNode)
			if err != nil {
				return nil, err
			}
			obj.objVal = append(obj.objVal, Field{Key: keyNode.Value, Value: v})
		}
		return obj, nil
	}
	return nil, fmt.Errorf("toon: unsupported YAML node kind %d on line %d", n.Kind, n.Line)
}

func (c *yamlConverter) fromScalar(n *yaml.Node) (*Value, error) {
	switch n.Tag {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("toon: YAML bool on line %d: %w", n.Line, err)
		}
		return Bool(b), nil
	case "!!int":
		if isNumericLexeme(n.Value) && !hasLeadingZero(n.Value) {
			return Number(n.Value), nil
		}
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, fmt.Errorf("toon: YAML int on line %d: %w", n.Line, err)
		}
		return Int(i), nil
	case "!!float":
		if isNumericLexeme(n.Value) && !hasLeadingZero(n.Value) {
			return Number(n.Value), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("toon: YAML float on line %d: %w", n.Line, err)
		}
		return Float(f), nil
	default:
		return String(n.Value), nil
	}
}

// ToYAML converts a Value to a YAML document, preserving key order.
func ToYAML(v *Value) ([]byte, error) {
	visited := make(map[*Value]struct{})
	node, err := toYAMLNode(v, visited)
	if err != nil {
		return nil, err
	}
	out, err := yaml.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("toon: YAML encode: %w", err)
	}
	return out, nil
}

func toYAMLNode(v *Value, visited map[*Value]struct{}) (*yaml.Node, error) {
	if v.IsNull() {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}
	switch v.kind {
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.boolVal)}, nil

	case KindNumber:
		if !isNumericLexeme(v.numVal) || hasLeadingZero(v.numVal) {
			return nil, &UnsupportedValueError{Reason: fmt.Sprintf("number lexeme %q", v.numVal)}
		}
		tag := "!!int"
		if !v.IsInt() {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.numVal}, nil

	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.strVal}, nil

	case KindArray:
		if _, ok := visited[v]; ok {
			return nil, &CyclicReferenceError{}
		}
		visited[v] = struct{}{}
		defer delete(visited, v)
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, elem := range v.arrVal {
			child, err := toYAMLNode(elem, visited)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil

	case KindObject:
		if _, ok := visited[v]; ok {
			return nil, &CyclicReferenceError{}
		}
		visited[v] = struct{}{}
		defer delete(visited, v)
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, f := range v.objVal {
			child, err := toYAMLNode(f.Value, visited)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key},
				child)
		}
		return node, nil
	}
	return nil, &UnsupportedValueError{Reason: "unknown kind"}
}
