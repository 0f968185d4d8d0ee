package main

import (
	"context"
	"fmt"
	"log"

	"github.com/siherrmann/meetinggraph"
	"github.com/siherrmann/meetinggraph/core/schema"
	"github.com/siherrmann/meetinggraph/database"
	"github.com/siherrmann/meetinggraph/helper"
	"github.com/siherrmann/meetinggraph/llm"
	"github.com/siherrmann/meetinggraph/model"
)

// sampleRecord is what the extraction step returns for a project page.
const sampleRecord = `{
  "project": {"name": "Riverside Redevelopment", "url": "https://example.org/riverside", "description": "Redevelopment of the old harbour area"},
  "meetings": [
    {
      "title": "Planning committee session",
      "date": "2024-03-12",
      "type": "public",
      "committee": {"name": "Planning Committee", "hasVotingPower": "yes"},
      "topics": [{"name": "Zoning", "category": "planning"}, {"name": "Funding", "category": "finance"}],
      "documents": [{"title": "Draft zoning plan", "url": "https://example.org/zoning.pdf", "type": "plan"}],
      "statements": [{"speaker": "Chair", "text": "The draft is accepted for consultation."}]
    },
    {
      "title": "Citizens hearing",
      "date": "2024-04-02",
      "committee": {"name": "Planning Committee"},
      "topics": [{"name": "Funding"}]
    }
  ]
}`

func main() {
	ctx := context.Background()

	// Start a test PostgreSQL container
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(ctx)

	config := &meetinggraph.Config{
		Backend: meetinggraph.BackendPostgres,
		Database: &helper.DatabaseConfiguration{
			Host:     "localhost",
			Port:     dbPort,
			Database: "database",
			Username: "user",
			Password: "password",
			Schema:   "public",
			SSLMode:  "disable",
		},
		// Only needed for Run and Extract
		LLM: llm.Config{Provider: "ollama", Model: "llama3.2:3b"},
	}

	g, err := meetinggraph.New(ctx, config)
	if err != nil {
		log.Fatalf("Failed to create meeting graph: %v", err)
	}
	defer g.Close(ctx)

	record, err := schema.Decode(sampleRecord)
	if err != nil {
		log.Fatalf("Failed to decode record: %v", err)
	}

	// Writing twice leaves the graph unchanged apart from the statements
	for i := 1; i <= 2; i++ {
		summary, err := g.Write(ctx, record)
		if err != nil {
			log.Fatalf("Failed to write record: %v", err)
		}
		fmt.Printf("Write %d: %d nodes, %d edges, %d skipped\n", i, summary.TotalNodes(), summary.TotalEdges(), summary.TotalSkipped())
	}

	store := g.Store.(*database.PostgresStore)
	for _, label := range model.Labels {
		count, err := store.Nodes().CountNodes(ctx, label)
		if err != nil {
			log.Fatalf("Failed to count %s nodes: %v", label, err)
		}
		fmt.Printf("%-10s %d\n", label, count)
	}

	topics, err := store.Nodes().SelectNodesByLabel(ctx, model.LabelTopic, 10)
	if err != nil {
		log.Fatalf("Failed to select topics: %v", err)
	}
	for _, topic := range topics {
		incoming, err := store.Edges().SelectEdgesToNode(ctx, topic.ID)
		if err != nil {
			log.Fatalf("Failed to select edges: %v", err)
		}
		fmt.Printf("Topic %v discussed in %d meetings\n", topic.Key["name"], len(incoming))
	}

	fmt.Println("\nBasic example completed successfully!")
}
