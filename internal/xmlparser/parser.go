// =============================================================================
// XML to CSV Converter - XML Parser Module
// =============================================================================
//
// This module loads the input XML document into an in-memory tree and locates
// the record elements inside it.
//
// FEATURES:
//   - Strict well-formedness: mismatched or unclosed tags, several root
//     elements, stray text outside the root and unbound prefixes are rejected
//   - UTF-8 input with or without a byte order mark, UTF-16 with a BOM, and
//     any legacy charset declared in the XML prolog
//   - Root namespace detection; records are searched in that namespace only
//   - General entities declared in an internal DTD subset are expanded
//
// The whole document is held in memory. Very large inputs are out of scope.
//
// =============================================================================

package xmlparser

import (
	"bytes"
	"encoding/xml"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/errors"
	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/types"
)

// =============================================================================
// DOCUMENT STRUCTURE
// =============================================================================

// Document is a parsed input file.
type Document struct {
	// Path is the file the document was read from, or the name given to Parse.
	Path string

	// Namespace is the namespace URI of the root element, "" if unqualified.
	Namespace string

	tree *etree.Document
}

// Root returns the root element.
func (d *Document) Root() *etree.Element {
	return d.tree.Root()
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads and parses the XML file at path.
//
// RETURNS:
//   - The parsed document.
//   - A NOT_FOUND error if path does not name an existing regular file.
//   - A PARSE error if the content is not well-formed XML.
//
// The file handle is closed before Load returns, whether parsing succeeded
// or not.
func Load(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewNotFoundError(path, nil)
		}
		return nil, errors.NewParseError(path, err)
	}
	if info.IsDir() {
		return nil, errors.NewNotFoundError(path, fmt.Errorf("%s is a directory", path))
	}

	file, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewNotFoundError(path, nil)
		}
		return nil, errors.NewParseError(path, err)
	}
	defer file.Close()

	return Parse(file, path)
}

// Parse parses an XML document from r. name is used in error messages.
func Parse(r io.Reader, name string) (*Document, error) {
	// A BOM, if present, decides the encoding; otherwise bytes pass through
	// untouched and the prolog's encoding declaration applies.
	data, err := io.ReadAll(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	if err != nil {
		return nil, errors.NewParseError(name, err)
	}

	entities, err := wellFormed(data)
	if err != nil {
		return nil, errors.NewParseError(name, err)
	}

	tree := etree.NewDocument()
	tree.ReadSettings.CharsetReader = charsetReader
	tree.ReadSettings.Entity = entities
	if err := tree.ReadFromBytes(data); err != nil {
		return nil, errors.NewParseError(name, err)
	}
	if err := checkDocument(tree); err != nil {
		return nil, errors.NewParseError(name, err)
	}

	root := tree.Root()
	namespace, _ := SplitQualifiedName(QualifiedName(root))

	return &Document{
		Path:      name,
		Namespace: namespace,
		tree:      tree,
	}, nil
}

// charsetReader decodes legacy encodings declared in the XML prolog.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "utf-16", "utf-16le", "utf-16be":
		// UTF-16 is only readable with a BOM, and BOMOverride has already
		// turned it into UTF-8.
		return input, nil
	}
	return charset.NewReaderLabel(label, input)
}

// wellFormed runs the input through the strict encoding/xml tokenizer, which
// checks tag nesting and premature end of input. etree reads raw tokens and
// does not guarantee either.
//
// RETURNS:
//   - The general entities declared in the DOCTYPE internal subset, nil if
//     there are none. The DOCTYPE precedes the root element, so the map is
//     in place before any reference to it is decoded.
//   - The first syntax error, if any.
func wellFormed(data []byte) (map[string]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charsetReader

	var entities map[string]string
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return entities, nil
		}
		if err != nil {
			return nil, err
		}
		if dir, ok := tok.(xml.Directive); ok {
			if declared := entityDecls(dir); len(declared) > 0 {
				entities = declared
				dec.Entity = entities
			}
		}
	}
}

// entityDecl matches <!ENTITY name "value"> and <!ENTITY name 'value'>.
// Parameter entities (<!ENTITY % name ...>) and external entities
// (SYSTEM/PUBLIC) do not match.
var entityDecl = regexp.MustCompile(`<!ENTITY\s+([^\s%"'>]+)\s+(?:"([^"]*)"|'([^']*)')\s*>`)

// entityDecls collects the internal general entities of a DOCTYPE directive.
// The first declaration of a name wins.
func entityDecls(dir xml.Directive) map[string]string {
	text := string(dir)
	if !strings.HasPrefix(strings.TrimSpace(text), "DOCTYPE") {
		return nil
	}

	var entities map[string]string
	for _, m := range entityDecl.FindAllStringSubmatch(text, -1) {
		if entities == nil {
			entities = make(map[string]string)
		}
		if _, seen := entities[m[1]]; seen {
			continue
		}
		value := m[2]
		if value == "" {
			value = m[3]
		}
		entities[m[1]] = value
	}
	return entities
}

// checkDocument rejects trees that etree accepts but that are not
// well-formed XML documents.
func checkDocument(tree *etree.Document) error {
	roots := 0
	for _, tok := range tree.Child {
		switch t := tok.(type) {
		case *etree.Element:
			roots++
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				return fmt.Errorf("text outside the root element: %q", truncate(strings.TrimSpace(t.Data), 40))
			}
		}
	}
	switch {
	case roots == 0:
		return fmt.Errorf("no element found")
	case roots > 1:
		return fmt.Errorf("junk after document element: %d root elements", roots)
	}
	return checkPrefixes(tree.Root())
}

// checkPrefixes reports the first element whose prefix has no namespace
// declaration in scope.
func checkPrefixes(el *etree.Element) error {
	if el.Space != "" && el.Space != "xml" && el.Space != "xmlns" && el.NamespaceURI() == "" {
		return fmt.Errorf("unbound prefix %q on element <%s>", el.Space, el.FullTag())
	}
	for _, child := range el.ChildElements() {
		if err := checkPrefixes(child); err != nil {
			return err
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// =============================================================================
// RECORD SEARCH
// =============================================================================

// FindRecords returns every element strictly below the root whose local name
// is tag and whose namespace URI equals the root's namespace, in depth-first
// pre-order. Records nested inside other records are included.
func (d *Document) FindRecords(tag string) []types.Record {
	var records []types.Record
	root := d.Root()
	if root == nil {
		return records
	}

	var walk func(el *etree.Element, path string)
	walk = func(el *etree.Element, path string) {
		for _, child := range el.ChildElements() {
			childPath := path + "/" + child.Tag
			if child.Tag == tag && child.NamespaceURI() == d.Namespace {
				records = append(records, types.Record{
					Ordinal: len(records) + 1,
					Path:    childPath,
					Fields:  fieldsOf(child),
				})
			}
			walk(child, childPath)
		}
	}
	walk(root, "/"+root.Tag)

	return records
}

// fieldsOf returns the immediate child elements of a record as fields.
func fieldsOf(record *etree.Element) []types.Field {
	children := record.ChildElements()
	fields := make([]types.Field, 0, len(children))
	for _, child := range children {
		fields = append(fields, types.Field{
			Name:  child.Tag,
			Value: child.Text(),
		})
	}
	return fields
}

// =============================================================================
// QUALIFIED NAMES
// =============================================================================

// QualifiedName returns the element's name in "{uri}local" form, or just the
// local name when the element is in no namespace.
func QualifiedName(el *etree.Element) string {
	if el == nil {
		return ""
	}
	if uri := el.NamespaceURI(); uri != "" {
		return "{" + uri + "}" + el.Tag
	}
	return el.Tag
}

// SplitQualifiedName splits "{uri}local" into its URI and local name.
// A name without "}" has an empty URI. The URI is the text between the
// leading "{" and the first "}"; the local name is what follows the last "}".
func SplitQualifiedName(name string) (uri, local string) {
	first := strings.Index(name, "}")
	if first < 0 {
		return "", name
	}
	uri = strings.TrimPrefix(name[:first], "{")
	return uri, LocalName(name)
}

// LocalName strips any "{uri}" prefix from a qualified name.
func LocalName(name string) string {
	if i := strings.LastIndex(name, "}"); i >= 0 {
		return name[i+1:]
	}
	return name
}
