package mcp

import "github.com/mark3labs/mcp-go/mcp"

var suggestToolDef = mcp.NewTool("gitignore_suggest",
	mcp.WithDescription("Interpret a partially typed list of template names. Returns the tokens that already name a template and the template names that could complete the last token."),
	mcp.WithString("query",
		mcp.Description("Space-separated template names as typed so far, e.g. \"go node vi\". Empty lists every template."),
	),
)

var buildToolDef = mcp.NewTool("gitignore_build",
	mcp.WithDescription("Combine templates into one .gitignore file. Names are matched case-insensitively; unknown names are reported in 'ignored'. The file lands at a stable path derived from the selection."),
	mcp.WithArray("templates",
		mcp.Required(),
		mcp.Description("Template names, e.g. [\"Go\", \"macOS\"]"),
		mcp.Items(map[string]any{"type": "string"}),
	),
	mcp.WithBoolean("include_content",
		mcp.Description("Return the combined file content as well as its path"),
	),
)

var updateToolDef = mcp.NewTool("gitignore_update",
	mcp.WithDescription("Download the latest github/gitignore templates and refresh the local catalog."),
)

var templatesToolDef = mcp.NewTool("gitignore_templates",
	mcp.WithDescription("List the templates in the local catalog, optionally filtered by a case-insensitive name prefix."),
	mcp.WithString("prefix",
		mcp.Description("Name prefix filter"),
	),
)

var historyToolDef = mcp.NewTool("gitignore_history",
	mcp.WithDescription("List recently built .gitignore files, newest first, one entry per distinct selection."),
	mcp.WithNumber("limit",
		mcp.Description("Maximum entries to return (default from config, max 100)"),
	),
)
