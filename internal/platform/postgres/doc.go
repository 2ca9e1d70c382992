// Package postgres stores decks in PostgreSQL. It implements
// store.DeckStore on top of database/sql with the pgx driver and ships its
// schema as embedded goose migrations.
//
// Cards live in their own table and decks reference them through
// deck_cards, so a card shared by several decks (or repeated within one) is
// saved once and comes back as a single *domain.Card.
package postgres
