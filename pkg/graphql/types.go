package graphql

import (
	"strconv"

	"github.com/graphql-go/graphql"

	"github.com/dd0wney/bionet/pkg/bionet"
)

var signEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "Sign",
	Values: graphql.EnumValueConfigMap{
		"Negative": &graphql.EnumValueConfig{Value: bionet.Negative},
		"None":     &graphql.EnumValueConfig{Value: bionet.None},
		"Positive": &graphql.EnumValueConfig{Value: bionet.Positive},
	},
})

var nodeTypeEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "NodeType",
	Values: graphql.EnumValueConfigMap{
		"Default":     &graphql.EnumValueConfig{Value: bionet.Default},
		"Interaction": &graphql.EnumValueConfig{Value: bionet.Interaction},
	},
})

// linkTypeEnum mirrors every bionet.LinkType by its persisted name
var linkTypeEnum = func() *graphql.Enum {
	values := graphql.EnumValueConfigMap{}
	for l := bionet.LinkNone; l.Valid(); l++ {
		values[l.String()] = &graphql.EnumValueConfig{Value: l}
	}
	return graphql.NewEnum(graphql.EnumConfig{Name: "LinkType", Values: values})
}()

var parameterType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Parameter",
	Fields: graphql.Fields{
		"name":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"value": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
	},
})

var termType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Term",
	Fields: graphql.Fields{
		"species":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"coefficient": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
	},
})

var reactionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Reaction",
	Fields: graphql.Fields{
		"expression":           &graphql.Field{Type: graphql.String},
		"normalizedExpression": &graphql.Field{Type: graphql.String},
		"inputs":               &graphql.Field{Type: graphql.NewList(termType)},
		"outputs":              &graphql.Field{Type: graphql.NewList(termType)},
		"rate":                 &graphql.Field{Type: graphql.Float},
		"parameters":           &graphql.Field{Type: graphql.NewList(graphql.String)},
	},
})

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func parseID(arg any) (uint64, error) {
	s, _ := arg.(string)
	return strconv.ParseUint(s, 10, 64)
}
