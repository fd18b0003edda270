// Package starwars provides an example schema based on Star Wars characters.
//
// Source: https://github.com/graphql/graphql.github.io/blob/source/site/_core/swapiSchema.js
package starwars

// Schema exercises every construct the compiler understands: descriptions, comments,
// directive declarations and invocations, interfaces, unions, enums, default values and
// the Query type.
var Schema = `
	# The episodes in the Star Wars trilogy
	enum Episode {
		NEW_HOPE
		EMPIRE
		JEDI
	}

	enum LengthUnit {
		METER
		FOOT
	}

	directive @lower on FIELD_DEFINITION

	directive @deprecated(
		reason: String = "No longer supported"
	) on FIELD_DEFINITION | ENUM_VALUE

	directive @upper on FIELD_DEFINITION

	# A character from the Star Wars universe
	interface Character {
		appearsIn: [Episode]!
		friends: [Character]
		id: ID!
		name: String!
	}

	type Starship {
		id: ID!
		name: String! @lower
		length(unit: LengthUnit = METER): Float @deprecated (reason: "Use ` + "`fullName`" + `.")
	}

	type Human implements Character {
		appearsIn: [Episode]!
		friends: [Character]
		id: ID!
		name: String! @upper
		starships: [Starship]
		totalCredits: Int
	}

	type Droid implements Character {
		appearsIn: [Episode]!
		friends: [Character]
		id: ID!
		name: String!
		primaryFunction: String
	}

	"""
	Members of a Union type need to be concrete Object types; you can’t
	define one using Interface types or other Union types as members.
	"""
	union SearchResult = Human | Droid | Starship

	union DroidLike = Droid | Starship

	type Query {
		droid(id: ID!): Droid
		"""
		Fetches the hero of a specified Star Wars film.
		"""
		hero(
			"The name of the film that the hero appears in."
			episode: Episode
		): Character
		search(
			id: ID!
			episode: Episode
		): SearchResult
	}

	# The mutation type is recognized and skipped.
	type Mutation {
		createReview(episode: Episode!, review: ReviewInput!): Review
	}

	input ReviewInput {
		stars: Int!
		commentary: String
	}
`
