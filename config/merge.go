package config

// mergeConfigs merges override configuration into base. Later layers win
// key-by-key; the base is not mutated.
func mergeConfigs(base, override *Config) *Config {
	result := *base

	result.Travis = mergeTravis(result.Travis, override.Travis)

	if override.Extensions != nil {
		// result.Extensions still aliases the base's map here; copy before
		// overlaying so the base layer stays untouched.
		merged := make(map[string]interface{}, len(result.Extensions)+len(override.Extensions))
		for k, v := range result.Extensions {
			merged[k] = v
		}
		result.Extensions = merged
		for key, value := range override.Extensions {
			// If both base and override have the same extension key, merge them
			if baseValue, exists := result.Extensions[key]; exists {
				if baseMap, baseOk := baseValue.(map[string]interface{}); baseOk {
					if overrideMap, overrideOk := value.(map[string]interface{}); overrideOk {
						mergedMap := make(map[string]interface{})
						for k, v := range baseMap {
							mergedMap[k] = v
						}
						for k, v := range overrideMap {
							mergedMap[k] = v
						}
						result.Extensions[key] = mergedMap
						continue
					}
				}
			}
			// Otherwise just replace
			result.Extensions[key] = value
		}
	}

	return &result
}

func mergeTravis(base, override TravisConfig) TravisConfig {
	result := base

	if len(override.BeforeScript) > 0 {
		result.BeforeScript = override.BeforeScript
	}
	if len(override.AfterScript) > 0 {
		result.AfterScript = override.AfterScript
	}
	if override.Script != "" {
		result.Script = override.Script
	}
	if override.Token != "" {
		result.Token = override.Token
	}
	if len(override.Versions) > 0 {
		result.Versions = override.Versions
	}
	if override.Language != "" {
		result.Language = override.Language
	}
	if override.APIURL != "" {
		result.APIURL = override.APIURL
	}
	if len(override.Notifications) > 0 {
		if result.Notifications == nil {
			result.Notifications = make(map[string]interface{})
		} else {
			merged := make(map[string]interface{}, len(result.Notifications))
			for k, v := range result.Notifications {
				merged[k] = v
			}
			result.Notifications = merged
		}
		for k, v := range override.Notifications {
			result.Notifications[k] = v
		}
	}

	return result
}
