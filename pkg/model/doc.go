// Package model describes the base objects manipulated by repofind.
//
// The object model for repository resolution is composed of:
//
//	Refs:
//	  A ref names a unit of content to be located. Several refs may be
//	  served by the same underlying remote.
//
//	Remotes:
//	  A remote identifies a source location (URI) together with its
//	  verification policy.
//
//	Results:
//	  A result is one finder's claim that a remote serves some subset of
//	  the requested refs, with a priority and optional freshness metadata.
package model
