package dsl_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/erdkit/erdkit/dsl"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected *dsl.File
	}{
		{
			name: "model with scalar fields",
			input: `model User {
	id Int @id
	email String @unique
	name String?
}`,
			expected: &dsl.File{
				Decls: []*dsl.Decl{
					{Model: &dsl.Model{
						Name: "User",
						Entries: []*dsl.ModelEntry{
							{Field: &dsl.FieldDecl{
								Name: "id",
								Type: "Int",
								Attrs: []*dsl.Attr{
									{Parts: []string{"id"}},
								},
							}},
							{Field: &dsl.FieldDecl{
								Name: "email",
								Type: "String",
								Attrs: []*dsl.Attr{
									{Parts: []string{"unique"}},
								},
							}},
							{Field: &dsl.FieldDecl{
								Name:     "name",
								Type:     "String",
								Nullable: true,
							}},
						},
					}},
				},
			},
		},
		{
			name: "list fields and relation attribute",
			input: `model Post {
	tags String[]
	authorId Int
	author User @relation(fields: [authorId], references: [id])
}`,
			expected: &dsl.File{
				Decls: []*dsl.Decl{
					{Model: &dsl.Model{
						Name: "Post",
						Entries: []*dsl.ModelEntry{
							{Field: &dsl.FieldDecl{
								Name:   "tags",
								Type:   "String",
								IsList: true,
							}},
							{Field: &dsl.FieldDecl{
								Name: "authorId",
								Type: "Int",
							}},
							{Field: &dsl.FieldDecl{
								Name: "author",
								Type: "User",
								Attrs: []*dsl.Attr{
									{
										Parts: []string{"relation"},
										Args: []*dsl.AttrArg{
											{
												Name: ptr("fields"),
												Value: &dsl.AttrValue{
													List: []*dsl.AttrValue{{Ident: ptr("authorId")}},
												},
											},
											{
												Name: ptr("references"),
												Value: &dsl.AttrValue{
													List: []*dsl.AttrValue{{Ident: ptr("id")}},
												},
											},
										},
									},
								},
							}},
						},
					}},
				},
			},
		},
		{
			name: "default values",
			input: `model Job {
	id Int @id @default(autoincrement())
	createdAt DateTime @default(now())
	status String @default("queued")
	retries Int @default(0)
}`,
			expected: &dsl.File{
				Decls: []*dsl.Decl{
					{Model: &dsl.Model{
						Name: "Job",
						Entries: []*dsl.ModelEntry{
							{Field: &dsl.FieldDecl{
								Name: "id",
								Type: "Int",
								Attrs: []*dsl.Attr{
									{Parts: []string{"id"}},
									{
										Parts: []string{"default"},
										Args: []*dsl.AttrArg{
											{Value: &dsl.AttrValue{Call: &dsl.AttrCall{Func: "autoincrement"}}},
										},
									},
								},
							}},
							{Field: &dsl.FieldDecl{
								Name: "createdAt",
								Type: "DateTime",
								Attrs: []*dsl.Attr{
									{
										Parts: []string{"default"},
										Args: []*dsl.AttrArg{
											{Value: &dsl.AttrValue{Call: &dsl.AttrCall{Func: "now"}}},
										},
									},
								},
							}},
							{Field: &dsl.FieldDecl{
								Name: "status",
								Type: "String",
								Attrs: []*dsl.Attr{
									{
										Parts: []string{"default"},
										Args: []*dsl.AttrArg{
											{Value: &dsl.AttrValue{Str: ptr("queued")}},
										},
									},
								},
							}},
							{Field: &dsl.FieldDecl{
								Name: "retries",
								Type: "Int",
								Attrs: []*dsl.Attr{
									{
										Parts: []string{"default"},
										Args: []*dsl.AttrArg{
											{Value: &dsl.AttrValue{Number: ptr("0")}},
										},
									},
								},
							}},
						},
					}},
				},
			},
		},
		{
			name: "block attribute and dotted attribute",
			input: `model Grant {
	userId Int
	roleId Int
	note String @db.VarChar(255)

	@@id([userId, roleId])
}`,
			expected: &dsl.File{
				Decls: []*dsl.Decl{
					{Model: &dsl.Model{
						Name: "Grant",
						Entries: []*dsl.ModelEntry{
							{Field: &dsl.FieldDecl{Name: "userId", Type: "Int"}},
							{Field: &dsl.FieldDecl{Name: "roleId", Type: "Int"}},
							{Field: &dsl.FieldDecl{
								Name: "note",
								Type: "String",
								Attrs: []*dsl.Attr{
									{
										Parts: []string{"db", "VarChar"},
										Args: []*dsl.AttrArg{
											{Value: &dsl.AttrValue{Number: ptr("255")}},
										},
									},
								},
							}},
							{BlockAttr: &dsl.BlockAttr{
								Parts: []string{"id"},
								Args: []*dsl.AttrArg{
									{Value: &dsl.AttrValue{
										List: []*dsl.AttrValue{
											{Ident: ptr("userId")},
											{Ident: ptr("roleId")},
										},
									}},
								},
							}},
						},
					}},
				},
			},
		},
		{
			name: "enum declaration",
			input: `enum Role {
	ADMIN
	USER
}`,
			expected: &dsl.File{
				Decls: []*dsl.Decl{
					{Enum: &dsl.Enum{
						Name: "Role",
						Entries: []*dsl.EnumEntry{
							{Value: ptr("ADMIN")},
							{Value: ptr("USER")},
						},
					}},
				},
			},
		},
		{
			name: "comments are skipped",
			input: `// schema header
model User { // open
	id Int @id // key
}`,
			expected: &dsl.File{
				Decls: []*dsl.Decl{
					{Model: &dsl.Model{
						Name: "User",
						Entries: []*dsl.ModelEntry{
							{Field: &dsl.FieldDecl{
								Name: "id",
								Type: "Int",
								Attrs: []*dsl.Attr{
									{Parts: []string{"id"}},
								},
							}},
						},
					}},
				},
			},
		},
		{
			name:     "empty document",
			input:    "",
			expected: &dsl.File{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := dsl.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}

			if diff := cmp.Diff(tt.expected, got, cmpIgnoreAST); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "missing model name", input: "model { id Int }"},
		{name: "unterminated block", input: "model User {\n\tid Int"},
		{name: "unterminated string", input: `model User {
	name String @default("oops)
}`},
		{name: "stray token", input: "model User {}\n$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := dsl.Parse(tt.input); err == nil {
				t.Fatalf("Parse() succeeded, want error")
			}
		})
	}
}

func TestAttrHelpers(t *testing.T) {
	t.Parallel()

	file, err := dsl.Parse(`model Post {
	authorId Int
	author User @relation("posts", fields: [authorId], references: [id])
}`)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	field := file.Models()[0].Fields()[1]

	rel := field.Attr("relation")
	if rel == nil {
		t.Fatal("Attr(relation) returned nil")
	}

	if got := rel.Arg("").Text(); got != "posts" {
		t.Errorf("positional arg = %q, want %q", got, "posts")
	}

	if got := rel.Arg("fields").Idents(); !equalStrings(got, []string{"authorId"}) {
		t.Errorf("fields arg = %v, want [authorId]", got)
	}

	if got := rel.Arg("references").Idents(); !equalStrings(got, []string{"id"}) {
		t.Errorf("references arg = %v, want [id]", got)
	}

	if rel.Arg("map") != nil {
		t.Error("Arg(map) should be nil for an absent argument")
	}

	if !field.HasAttr("relation") || field.HasAttr("unique") {
		t.Error("HasAttr reported the wrong attribute set")
	}
}

func equalStrings(a, b []string) bool {
	return strings.Join(a, "\x00") == strings.Join(b, "\x00")
}
