// Package mermaid renders mind-map hierarchies as Mermaid flowcharts.
//
// The output is plain text that Mermaid-compatible viewers (GitHub, most
// Markdown editors, the Mermaid live editor) display directly:
//
//	graph LR;
//	    %% Styling
//	    classDef root fill:white,stroke:#F08BC3,color:#333333,stroke-width:2;
//	    ...
//	    Java_Developer["Java Developer"];
//	    class Java_Developer root;
//	    Skills["Skills"];
//	    class Skills category;
//	    Java_Developer --> Skills;
//
// Node identifiers are derived from labels by [NodeID]; labels are shown
// verbatim inside quotes.
package mermaid
