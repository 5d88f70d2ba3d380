// Package domain contains the core business entities of the classifieds
// platform: users, property listings and their images, favorites, messages
// and reviews, along with the search and pagination rules shared by every
// listing query. It is independent of storage and transport.
package domain
