package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/wayfinder/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to the directions pipeline.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	coordinateType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Coordinate",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	stepType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Step",
		Fields: graphql.Fields{
			"instruction":      &graphql.Field{Type: graphql.String},
			"name":             &graphql.Field{Type: graphql.String},
			"distance_meters":  &graphql.Field{Type: graphql.Float},
			"duration_seconds": &graphql.Field{Type: graphql.Float},
		},
	})

	directionsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Directions",
		Fields: graphql.Fields{
			"mode":             &graphql.Field{Type: graphql.String},
			"profile":          &graphql.Field{Type: graphql.String},
			"text":             &graphql.Field{Type: graphql.String},
			"origin":           &graphql.Field{Type: coordinateType},
			"destination":      &graphql.Field{Type: coordinateType},
			"display_name":     &graphql.Field{Type: graphql.String},
			"distance_meters":  &graphql.Field{Type: graphql.Float},
			"duration_seconds": &graphql.Field{Type: graphql.Float},
			"steps":            &graphql.Field{Type: graphql.NewList(stepType)},
			"geometry":         &graphql.Field{Type: graphql.NewList(coordinateType)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"profiles": &graphql.Field{
				Type:        graphql.NewList(graphql.String),
				Description: "Supported travel profiles",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return []string{
						string(domain.ProfileDriving),
						string(domain.ProfileCycling),
						string(domain.ProfileWalking),
					}, nil
				},
			},
			"directions": &graphql.Field{
				Type:        directionsType,
				Description: "Text directions from the caller's location to an address",
				Args: graphql.FieldConfigArgument{
					"address": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"profile": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					address := p.Args["address"].(string)
					profile := p.Args["profile"].(string)

					var prof domain.Profile
					if profile != "" {
						var err error
						if prof, err = domain.ParseProfile(profile); err != nil {
							return nil, errors.New(publicMessage(p.Context, err))
						}
					}

					res, err := deps.Directions.Process(p.Context, domain.DirectionsRequest{
						Address: address,
						Mode:    domain.ModeText,
						Profile: prof,
					})
					if err != nil {
						return nil, errors.New(publicMessage(p.Context, err))
					}
					return directionsResult(res), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// directionsResult flattens a pipeline result for the default resolvers.
func directionsResult(res *domain.DirectionsResult) map[string]interface{} {
	steps := make([]map[string]interface{}, 0, len(res.Route.Steps))
	for _, s := range res.Route.Steps {
		steps = append(steps, map[string]interface{}{
			"instruction":      s.Instruction,
			"name":             s.Name,
			"distance_meters":  s.DistanceMeters,
			"duration_seconds": s.DurationSeconds,
		})
	}
	geometry := make([]map[string]interface{}, 0, len(res.Route.Geometry))
	for _, c := range res.Route.Geometry {
		geometry = append(geometry, coordinate(c))
	}
	return map[string]interface{}{
		"mode":             string(res.Mode),
		"profile":          string(res.Route.Profile),
		"text":             res.Text,
		"origin":           coordinate(res.Origin),
		"destination":      coordinate(res.Destination.Location),
		"display_name":     res.Destination.DisplayName,
		"distance_meters":  res.Route.Summary.DistanceMeters,
		"duration_seconds": res.Route.Summary.DurationSeconds,
		"steps":            steps,
		"geometry":         geometry,
	}
}

func coordinate(c domain.Coordinate) map[string]interface{} {
	return map[string]interface{}{"lat": c.Lat, "lon": c.Lon}
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
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
