// Package models defines the core domain models for SharedShop.
//
// A Budget is a spending cap shared by a set of users over a period.
// Members maintain a shared shopping list of ShoppingItems; purchased
// items count against the budget. Membership is a bidirectional relation:
// Budget.MemberIDs lists the users of a budget and User.BudgetIDs lists the
// budgets of a user. Both sides are always changed together.
//
// Invitations grant membership to whoever presents the token before it
// expires. BudgetSnapshots freeze a budget's totals at the end of a period.
// Notifications are per-user records; delivery is handled elsewhere.
//
// Models carry no serialization tags. Storage maps them to rows and the
// api package defines the wire shapes.
package models
