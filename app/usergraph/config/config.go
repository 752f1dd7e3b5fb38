package config

import (
	"github.com/jrazmi/usergraph/bridge/graphqlbridge"
	"github.com/jrazmi/usergraph/sdk/logger"
	"github.com/jrazmi/usergraph/sdk/telemetry"
)

// API holds the HTTP surface settings.
type API struct {
	GraphQLPath string `env:"GRAPHQL_PATH" default:"/gql"`
	DebugVars   bool   `env:"DEBUG_VARS" default:"true"`
}

// Usergraph is the overall configuration for the usergraph application.
type Usergraph struct {
	Build     string
	Logger    *logger.Logger
	Telemetry telemetry.Telemetry
	API       API

	Executor *graphqlbridge.Executor
	// UserCount reports the number of users served.
	UserCount func() int
}
