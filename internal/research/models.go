package research

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/contact-finder/internal/failure"
)

// Models lists the web-search capable models: ids containing "perplexity"
// or "online".
func (s *Service) Models(ctx context.Context) ([]string, error) {
	if strings.TrimSpace(s.cfg.APIKey) == "" {
		return nil, failure.ConfigurationMissing(APIKeySetting)
	}
	all, err := s.client.ListModels(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "research: list models")
	}
	ids := make([]string, 0, len(all))
	for _, m := range all {
		id := strings.ToLower(m.ID)
		if strings.Contains(id, "perplexity") || strings.Contains(id, "online") {
			ids = append(ids, m.ID)
		}
	}
	return ids, nil
}

// PickModel returns preferred when it is available, else the first available
// id, else preferred unchanged.
func PickModel(available []string, preferred string) string {
	for _, id := range available {
		if id == preferred {
			return id
		}
	}
	if len(available) > 0 {
		return available[0]
	}
	return preferred
}
