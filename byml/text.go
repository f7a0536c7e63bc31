package byml

import (
	"encoding/base64"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/switchtoolbox/paramio/errs"
	"github.com/switchtoolbox/paramio/format"
)

// FromText parses a YAML document into a Byml tree (§4.3).
func FromText(text string) (*Byml, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, errs.InvalidData("byml: invalid yaml: %v", err)
	}

	if len(doc.Content) == 0 {
		v := Null()
		return &v, nil
	}

	return parseYAMLNode(doc.Content[0])
}

func parseYAMLNode(n *yaml.Node) (*Byml, error) {
	if n.Kind == yaml.AliasNode {
		if n.Alias == nil {
			return nil, errs.InvalidData("byml: unresolved yaml alias")
		}

		return parseYAMLNode(n.Alias)
	}

	switch n.Kind {
	case yaml.MappingNode:
		h := NewHash()

		for i := 0; i+1 < len(n.Content); i += 2 {
			val, err := parseYAMLNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}

			h.Set(n.Content[i].Value, *val)
		}

		return &h, nil

	case yaml.SequenceNode:
		items := make([]Byml, len(n.Content))

		for i, c := range n.Content {
			v, err := parseYAMLNode(c)
			if err != nil {
				return nil, err
			}

			items[i] = *v
		}

		arr := NewArray(items)

		return &arr, nil

	case yaml.ScalarNode:
		return parseScalarNode(n)

	default:
		return nil, errs.InvalidData("byml: unsupported yaml node kind %d", n.Kind)
	}
}

func parseScalarNode(n *yaml.Node) (*Byml, error) {
	tag := n.Tag
	quoted := n.Style == yaml.DoubleQuotedStyle || n.Style == yaml.SingleQuotedStyle
	value := n.Value

	if tag == "!!binary" || tag == "tag:yaml.org,2002:binary" {
		data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(value))
		if err != nil {
			return nil, errs.InvalidData("byml: invalid base64 in binary scalar: %v", err)
		}

		v := NewBinaryData(data)

		return &v, nil
	}

	switch tag {
	case "!u":
		it, err := LexIntForced(value)
		if err != nil {
			return nil, err
		}

		u, ok := it.AsU32()
		if !ok {
			return nil, errs.InvalidData("byml: %q does not fit in U32", value)
		}

		v := NewU32(u)

		return &v, nil

	case "!ul":
		it, err := LexIntForced(value)
		if err != nil {
			return nil, err
		}

		u, ok := it.AsU64()
		if !ok {
			return nil, errs.InvalidData("byml: %q does not fit in U64", value)
		}

		v := NewU64(u)

		return &v, nil

	case "!l":
		it, err := LexIntForced(value)
		if err != nil {
			return nil, err
		}

		v := NewI64(it.AsI64())

		return &v, nil

	case "!f64":
		f, err := LexFloatForced(value)
		if err != nil {
			return nil, err
		}

		v := NewDouble(f)

		return &v, nil
	}

	if quoted {
		v := NewString(value)
		return &v, nil
	}

	sc := LexScalar(value, false)

	switch sc.Kind {
	case ScalarNull:
		v := Null()
		return &v, nil

	case ScalarBool:
		v := NewBool(sc.Bool)
		return &v, nil

	case ScalarInt:
		if i32, ok := sc.Int.AsI32(); ok {
			v := NewI32(i32)
			return &v, nil
		}

		v := NewI64(sc.Int.AsI64())

		return &v, nil

	case ScalarFloat:
		v := NewFloat(float32(sc.Float))
		return &v, nil

	default:
		v := NewString(sc.Str)
		return &v, nil
	}
}

// ToText serializes root to YAML (§4.3). Only Hash, Array, and Null
// roots are supported; anything else is a precondition error.
func ToText(root *Byml) (string, error) {
	if root == nil {
		return "", errs.InvalidData("byml: cannot serialize a nil root")
	}

	switch root.Kind() {
	case format.BymlNull:
		return "null", nil

	case format.BymlHash, format.BymlArray:
		content, err := buildYAMLNode(*root)
		if err != nil {
			return "", err
		}

		doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{content}}

		out, err := yaml.Marshal(doc)
		if err != nil {
			return "", errs.Any("byml: yaml encode failed: " + err.Error())
		}

		return string(out), nil

	default:
		return "", errs.InvalidData("byml: can only serialize Hash, Array, or Null to text, got %s", root.Kind())
	}
}

func buildYAMLNode(v Byml) (*yaml.Node, error) {
	switch v.Kind() {
	case format.BymlHash:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if shouldUseInline(v) {
			node.Style = yaml.FlowStyle
		}

		for _, k := range v.hashValue.SortedKeys() {
			val, _ := v.hashValue.Get(k)

			keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
			if stringNeedsQuoting(k) {
				keyNode.Style = yaml.SingleQuotedStyle
			}

			valNode, err := buildYAMLNode(val)
			if err != nil {
				return nil, err
			}

			node.Content = append(node.Content, keyNode, valNode)
		}

		return node, nil

	case format.BymlArray:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if shouldUseInline(v) {
			node.Style = yaml.FlowStyle
		}

		for _, item := range v.arrValue {
			child, err := buildYAMLNode(item)
			if err != nil {
				return nil, err
			}

			node.Content = append(node.Content, child)
		}

		return node, nil

	default:
		return buildScalarNode(v)
	}
}

func buildScalarNode(v Byml) (*yaml.Node, error) {
	switch v.Kind() {
	case format.BymlNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil

	case format.BymlBool:
		val := "false"
		if v.boolValue {
			val = "true"
		}

		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: val}, nil

	case format.BymlI32:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(int64(v.i32Value), 10)}, nil

	case format.BymlI64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!l", Value: strconv.FormatInt(v.i64Value, 10)}, nil

	case format.BymlU32:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!u", Value: "0x" + strconv.FormatUint(uint64(v.u32Value), 16)}, nil

	case format.BymlU64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!ul", Value: "0x" + strconv.FormatUint(v.u64Value, 16)}, nil

	case format.BymlF32:
		s := strconv.FormatFloat(float64(v.f32Value), 'g', -1, 32)
		if !strings.ContainsAny(s, ".eEnN") {
			// An integral value like "2" would be read back as I32.
			s += ".0"
		}

		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: s}, nil

	case format.BymlF64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!f64", Value: strconv.FormatFloat(v.f64Value, 'g', -1, 64)}, nil

	case format.BymlString:
		node := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.strValue}
		if stringNeedsQuoting(v.strValue) {
			node.Style = yaml.DoubleQuotedStyle
		}

		return node, nil

	case format.BymlBinary:
		return &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!binary",
			Value: base64.StdEncoding.EncodeToString(v.binValue),
		}, nil

	default:
		return nil, errs.InvalidData("byml: cannot serialize node kind %s to yaml", v.Kind())
	}
}

// shouldUseInline decides between block and flow style: a container
// emits inline when it has fewer than 10 children and every child is a
// scalar, matching the cosmetic cutoff the original implementation uses.
func shouldUseInline(v Byml) bool {
	isSimple := func(c Byml) bool {
		return c.Kind() != format.BymlArray && c.Kind() != format.BymlHash
	}

	switch v.Kind() {
	case format.BymlArray:
		if len(v.arrValue) >= 10 {
			return false
		}

		for _, c := range v.arrValue {
			if !isSimple(c) {
				return false
			}
		}

		return true

	case format.BymlHash:
		if v.hashValue.Len() >= 10 {
			return false
		}

		allSimple := true
		v.hashValue.Each(func(_ string, c Byml) {
			if !isSimple(c) {
				allSimple = false
			}
		})

		return allSimple

	default:
		return false
	}
}

const yamlIndicators = "!&*-?|>%@`\"'#,[]{}:"

// stringNeedsQuoting reports whether s must be quoted to round-trip as a
// String rather than being reparsed as some other scalar kind (§4.3).
func stringNeedsQuoting(s string) bool {
	if s == "" {
		return true
	}

	if strings.TrimSpace(s) != s {
		return true
	}

	for _, r := range s {
		if r < 0x20 {
			return true
		}
	}

	if strings.ContainsRune(yamlIndicators, rune(s[0])) {
		return true
	}

	return LexScalar(s, false).Kind != ScalarString
}
