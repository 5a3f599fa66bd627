// Package view contains the streaming parser of the repository view documents.
//
// The Parser reads the xml document event by event keeping the stack of the
// element contexts. Each element is resolved against the dictionary when it is
// read and the parsed nodes are handed to the importer.Importer in the document
// order. A node is imported the first time its children need the parent
// reference or at its end element.
//
// A view document has the following shape:
//
//	<view:view xmlns:view="http://www.alfresco.org/view/repository/1.0" xmlns:cm="...">
//	  <view:metadata>
//	    <view:exportOf>/cm:company_home</view:exportOf>
//	  </view:metadata>
//	  <cm:folder view:childName="cm:docs" view:id="docs">
//	    <view:aspects><cm:titled/></view:aspects>
//	    <view:acl view:inherit="false">
//	      <view:ace view:access="ALLOWED">
//	        <view:authority>GROUP_X</view:authority>
//	        <view:permission>Write</view:permission>
//	      </view:ace>
//	    </view:acl>
//	    <view:properties>
//	      <cm:name>docs</cm:name>
//	      <cm:title><view:mlvalue view:locale="en">Docs</view:mlvalue></cm:title>
//	    </view:properties>
//	    <view:associations>
//	      <cm:contains>
//	        <cm:content view:childName="cm:readme">...</cm:content>
//	        <view:reference view:idref="other"/>
//	      </cm:contains>
//	    </view:associations>
//	  </cm:folder>
//	</view:view>
//
// Every failure aborts the import and is returned as the *Error with the
// position of the document event that caused it.
package view
