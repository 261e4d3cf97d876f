package rxnav

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"medicine-tracker/internal/platform/httpclient"
	"medicine-tracker/internal/ports/druginfo"
)

// Cliente del servicio RxNav (NIH). Best-effort: los errores de red no deben
// bloquear al engine; el caller decide si descartar el resultado.
const DefaultBaseURL = "https://rxnav.nlm.nih.gov/REST"

// Compile-time check
var _ druginfo.Lookup = (*Client)(nil)

type Client struct {
	http *httpclient.Client
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	hc, err := httpclient.NewWithBaseURL(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

// NewClientWithHTTP permite inyectar el httpclient (tests).
func NewClientWithHTTP(hc *httpclient.Client) *Client {
	return &Client{http: hc}
}

type drugsResponse struct {
	DrugGroup struct {
		DrugList struct {
			Drug []struct {
				Name  string `json:"name"`
				Rxcui string `json:"rxcui"`
			} `json:"drug"`
		} `json:"drugList"`
	} `json:"drugGroup"`
}

type propertiesResponse struct {
	PropConceptGroup struct {
		PropConcept []struct {
			PropName  string `json:"propName"`
			PropValue string `json:"propValue"`
		} `json:"propConcept"`
	} `json:"propConceptGroup"`
}

// Lookup resuelve un nombre en dos pasos: drugs.json para el rxcui del primer
// match, allproperties.json para usage/category/genericName. (info, false)
// con placeholders N/A si RxNav no conoce el medicamento.
func (c *Client) Lookup(ctx context.Context, name string) (druginfo.Info, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return druginfo.Unknown(), false, nil
	}

	var drugs drugsResponse
	q := url.Values{"name": {name}}
	if err := c.http.GetJSON(ctx, "/drugs.json", q, &drugs); err != nil {
		return druginfo.Unknown(), false, fmt.Errorf("rxnav: drugs lookup: %w", err)
	}

	list := drugs.DrugGroup.DrugList.Drug
	if len(list) == 0 || strings.TrimSpace(list[0].Rxcui) == "" {
		return druginfo.Unknown(), false, nil
	}

	var props propertiesResponse
	path := fmt.Sprintf("/rxcui/%s/allproperties.json", url.PathEscape(list[0].Rxcui))
	if err := c.http.GetJSON(ctx, path, url.Values{"prop": {"ALL"}}, &props); err != nil {
		return druginfo.Unknown(), false, fmt.Errorf("rxnav: properties lookup: %w", err)
	}

	info := druginfo.Unknown()
	for _, p := range props.PropConceptGroup.PropConcept {
		if strings.TrimSpace(p.PropValue) == "" {
			continue
		}
		switch p.PropName {
		case "DEFINITIONAL_FEATURES":
			info.Usage = p.PropValue
		case "Drug Class":
			info.Category = p.PropValue
		case "RxNorm Name":
			info.GenericName = p.PropValue
		}
	}
	return info, true, nil
}

// Suggest devuelve hasta limit nombres para autocomplete.
func (c *Client) Suggest(ctx context.Context, query string, limit int) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 5
	}

	var drugs drugsResponse
	q := url.Values{"name": {query}}
	if err := c.http.GetJSON(ctx, "/drugs.json", q, &drugs); err != nil {
		return nil, fmt.Errorf("rxnav: suggest: %w", err)
	}

	names := make([]string, 0, limit)
	for _, d := range drugs.DrugGroup.DrugList.Drug {
		if strings.TrimSpace(d.Name) == "" {
			continue
		}
		names = append(names, d.Name)
		if len(names) == limit {
			break
		}
	}
	return names, nil
}
