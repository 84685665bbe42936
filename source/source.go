package source

import (
	"io"
	"net/http"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/utahta/go-openuri"

	"simple_yaml_parser/cli"
	"simple_yaml_parser/util/network"
)

// SampleName represents name of the built-in sample document
const SampleName = "sample"

const sample = `person:
  name: John Doe
  description: |
    something here
    that spans multiple lines
  age: 30
  something:
    x: true
  address:
    street: 123 Main St
    city: Example City
places:
  list: ["something", "here"]
  inner:
    x: string
`

// stdin is read for documents named cli.Stdin
var stdin io.Reader = os.Stdin

// Document represents named text to scan
type Document struct {
	Name string
	Text string
}

// Sample returns built-in sample document
func Sample() Document {
	return Document{Name: SampleName, Text: sample}
}

// Read returns document read from <name>.
//
// <name> can be a local file path, URL or cli.Stdin. URLs are requested with <client>.
func Read(name string, client *http.Client) (Document, error) {
	doc := Document{Name: name}

	var reader io.ReadCloser
	if name == cli.Stdin {
		reader = io.NopCloser(stdin)
	} else {
		var err error
		reader, err = openuri.Open(name, openuri.WithHTTPClient(client))
		if err != nil {
			if errType := network.GetErrType(err); errType != network.Unknown {
				return doc, errors.Wrapf(err, "Open %v: %v", name, errType)
			}
			return doc, errors.Wrapf(err, "Open %v", name)
		}
	}
	defer reader.Close()

	text, err := io.ReadAll(reader)
	if err != nil {
		return doc, errors.Wrapf(err, "Read %v", name)
	}
	doc.Text = string(text)
	return doc, nil
}
