package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/ecoaldeas/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	boundsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Bounds",
		Fields: graphql.Fields{
			"min_lat": &graphql.Field{Type: graphql.Float},
			"min_lon": &graphql.Field{Type: graphql.Float},
			"max_lat": &graphql.Field{Type: graphql.Float},
			"max_lon": &graphql.Field{Type: graphql.Float},
		},
	})

	siteType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Site",
		Fields: graphql.Fields{
			"index":       &graphql.Field{Type: graphql.Int},
			"name":        &graphql.Field{Type: graphql.String},
			"location":    &graphql.Field{Type: graphql.String},
			"province":    &graphql.Field{Type: graphql.String},
			"summary":     &graphql.Field{Type: graphql.String},
			"link":        &graphql.Field{Type: graphql.String},
			"image_url":   &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"coordinates": &graphql.Field{Type: graphql.String},
			"active": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					s, ok := p.Source.(domain.Site)
					if !ok {
						return nil, nil
					}
					return s.Active(), nil
				},
			},
			"point": &graphql.Field{
				Type:        geoPointType,
				Description: "Parsed coordinate, null when the coordinate text is malformed",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					s, ok := p.Source.(domain.Site)
					if !ok {
						return nil, nil
					}
					if pt, ok := s.Coordinate().Point(); ok {
						return pt, nil
					}
					return nil, nil
				},
			},
		},
	})

	popupType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Popup",
		Fields: graphql.Fields{
			"name":     &graphql.Field{Type: graphql.String},
			"location": &graphql.Field{Type: graphql.String},
			"province": &graphql.Field{Type: graphql.String},
			"summary":  &graphql.Field{Type: graphql.String},
			"link":     &graphql.Field{Type: graphql.String},
		},
	})

	markerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Marker",
		Fields: graphql.Fields{
			"index": &graphql.Field{Type: graphql.Int},
			"lat":   &graphql.Field{Type: graphql.Float},
			"lon":   &graphql.Field{Type: graphql.Float},
			"color": &graphql.Field{Type: graphql.String},
			"popup": &graphql.Field{Type: popupType},
		},
	})

	mapViewType := graphql.NewObject(graphql.ObjectConfig{
		Name: "MapView",
		Fields: graphql.Fields{
			"center":  &graphql.Field{Type: geoPointType},
			"zoom":    &graphql.Field{Type: graphql.Int},
			"markers": &graphql.Field{Type: graphql.NewList(markerType)},
			"bounds":  &graphql.Field{Type: boundsType},
		},
	})

	nearestType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Nearest",
		Fields: graphql.Fields{
			"site":       &graphql.Field{Type: siteType},
			"distance_m": &graphql.Field{Type: graphql.Float},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"sites": &graphql.Field{
				Type:        graphql.NewList(siteType),
				Description: "List sites in dataset order",
				Args: graphql.FieldConfigArgument{
					"offset": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 100},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					sites := deps.Sites.Sites()
					offset := p.Args["offset"].(int)
					limit := p.Args["limit"].(int)
					if offset < 0 || offset >= len(sites) {
						return []domain.Site{}, nil
					}
					end := len(sites)
					if limit > 0 && limit < end-offset {
						end = offset + limit
					}
					return sites[offset:end], nil
				},
			},
			"site": &graphql.Field{
				Type:        siteType,
				Description: "Get a site by index",
				Args: graphql.FieldConfigArgument{
					"index": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					s, err := deps.Sites.Get(p.Args["index"].(int))
					if errors.Is(err, domain.ErrSiteNotFound) {
						return nil, nil
					}
					return s, err
				},
			},
			"markers": &graphql.Field{
				Type:        graphql.NewList(markerType),
				Description: "Markers for sites with valid coordinates",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Sites.Markers(), nil
				},
			},
			"mapView": &graphql.Field{
				Type:        mapViewType,
				Description: "Initial map view",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Sites.MapView(), nil
				},
			},
			"nearest": &graphql.Field{
				Type:        nearestType,
				Description: "Resolve a location to the closest site",
				Args: graphql.FieldConfigArgument{
					"lat": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lon": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					site, dist, err := deps.Sites.Nearest(p.Args["lat"].(float64), p.Args["lon"].(float64))
					if errors.Is(err, domain.ErrSiteNotFound) {
						return nil, nil
					}
					if err != nil {
						return nil, err
					}
					return newNearestResponse(site, dist), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
