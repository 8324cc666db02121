package config

// projectExtension is the shape of the optional `project` section of the
// configuration file, the source of injected project metadata.
type projectExtension struct {
	Developers []struct {
		Name  string `yaml:"name"`
		Email string `yaml:"email"`
	} `yaml:"developers"`
}

// ProjectMetadata decodes the `project` section into the read-only metadata
// view consumed by the resolver. A configuration without the section yields
// empty metadata.
func (c *Config) ProjectMetadata() (Metadata, error) {
	var ext projectExtension
	if err := c.UnmarshalExtension("project", &ext); err != nil {
		return Metadata{}, err
	}

	meta := Metadata{Developers: make([]Developer, 0, len(ext.Developers))}
	for _, dev := range ext.Developers {
		meta.Developers = append(meta.Developers, Developer{Name: dev.Name, Email: dev.Email})
	}
	return meta, nil
}
