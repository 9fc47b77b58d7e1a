package jobconf

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/goccy/go-json"
	"sigs.k8s.io/yaml"
)

// ProjectIDKey is the job wide BigQuery project id. Output settings fall back to
// it when no output project id is configured.
const ProjectIDKey = "mapred.bq.project.id"

// Configuration is the string keyed job configuration shared by every stage of a job.
type Configuration interface {
	// Get returns the value stored under key and whether the key is set
	Get(key string) (string, bool)
	Set(key, value string)
}

// JobConf is an in-memory Configuration. It is not safe for concurrent mutation.
type JobConf struct {
	properties map[string]string
}

func New() *JobConf {
	return &JobConf{properties: make(map[string]string)}
}

// FromMap copies properties into a new JobConf.
func FromMap(properties map[string]string) *JobConf {
	conf := New()
	for key, value := range properties {
		conf.properties[key] = value
	}
	return conf
}

func (c *JobConf) Get(key string) (string, bool) {
	value, found := c.properties[key]
	return value, found
}

func (c *JobConf) Set(key, value string) {
	c.properties[key] = value
}

func (c *JobConf) Unset(key string) {
	delete(c.properties, key)
}

func (c *JobConf) Len() int {
	return len(c.properties)
}

// Keys returns the set keys in sorted order.
func (c *JobConf) Keys() []string {
	keys := make([]string, 0, len(c.properties))
	for key := range c.properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (c *JobConf) ToMap() map[string]string {
	properties := make(map[string]string, len(c.properties))
	for key, value := range c.properties {
		properties[key] = value
	}
	return properties
}

// LoadFile reads a flat YAML or JSON document of key/value pairs. Scalar values
// that are not strings (numbers, booleans) are stored in their textual form.
func LoadFile(path string) (*JobConf, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job configuration[%s]: %s", path, err)
	}

	// numbers are kept as written, table ids and project numbers must not turn into floats
	document, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse job configuration[%s]: %s", path, err)
	}
	raw := map[string]any{}
	decoder := json.NewDecoder(bytes.NewReader(document))
	decoder.UseNumber()
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse job configuration[%s]: %s", path, err)
	}

	conf := New()
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
			continue
		case string:
			conf.Set(key, v)
		case json.Number:
			conf.Set(key, v.String())
		case bool:
			conf.Set(key, fmt.Sprint(v))
		default:
			return nil, fmt.Errorf("job configuration key %s must hold a scalar value, found %T", key, value)
		}
	}
	return conf, nil
}

// LoadOrNew behaves like LoadFile but starts from an empty configuration when path does not exist.
func LoadOrNew(path string) (*JobConf, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return New(), nil
	}
	return LoadFile(path)
}

// WriteFile stores the configuration as YAML with keys in sorted order.
func (c *JobConf) WriteFile(path string) error {
	data, err := yaml.Marshal(c.properties)
	if err != nil {
		return fmt.Errorf("failed to marshal job configuration: %s", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write job configuration[%s]: %s", path, err)
	}
	return nil
}
